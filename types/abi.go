package types

// ABIDef is a contract's published interface: its named types,
// struct layouts, actions and tables. The binary codec consumes these
// descriptors; this binding only carries them.
type ABIDef struct {
	Version string      `json:"version" cramberry:"1"`
	Types   []ABIType   `json:"types" cramberry:"2"`
	Structs []ABIStruct `json:"structs" cramberry:"3"`
	Actions []ABIAction `json:"actions" cramberry:"4"`
	Tables  []ABITable  `json:"tables" cramberry:"5"`
}

// ABIType is a typedef: NewTypeName is an alias for Type.
type ABIType struct {
	NewTypeName string `json:"new_type_name" cramberry:"1"`
	Type        string `json:"type" cramberry:"2"`
}

// ABIStruct describes one struct layout, optionally extending a base.
type ABIStruct struct {
	Name   string     `json:"name" cramberry:"1"`
	Base   string     `json:"base,omitempty" cramberry:"2"`
	Fields []ABIField `json:"fields" cramberry:"3"`
}

// ABIField is one field of an ABIStruct.
type ABIField struct {
	Name string `json:"name" cramberry:"1"`
	Type string `json:"type" cramberry:"2"`
}

// ABIAction binds an action name to the struct encoding its payload.
type ABIAction struct {
	Name              string `json:"name" cramberry:"1"`
	Type              string `json:"type" cramberry:"2"`
	RicardianContract string `json:"ricardian_contract,omitempty" cramberry:"3"`
}

// ABITable binds a table name to its row struct and index layout.
type ABITable struct {
	Name      string   `json:"name" cramberry:"1"`
	IndexType string   `json:"index_type" cramberry:"2"`
	KeyNames  []string `json:"key_names" cramberry:"3"`
	KeyTypes  []string `json:"key_types" cramberry:"4"`
	Type      string   `json:"type" cramberry:"5"`
}

// Table looks up a table descriptor by name.
func (a ABIDef) Table(name string) (ABITable, bool) {
	for _, t := range a.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return ABITable{}, false
}

// CodeResult is the node's answer to get_code: the deployed module
// plus its ABI.
type CodeResult struct {
	AccountName AccountName `json:"account_name" cramberry:"1"`
	CodeHash    Checksum256 `json:"code_hash" cramberry:"2"`
	WASM        HexBytes    `json:"wasm" cramberry:"3"`
	ABI         ABIDef      `json:"abi" cramberry:"4"`
}

// ABIResult is the node's answer to get_abi.
type ABIResult struct {
	AccountName AccountName `json:"account_name" cramberry:"1"`
	ABI         ABIDef      `json:"abi" cramberry:"2"`
}
