package types

// TableRowsRequest selects a window of a contract table. Code owns
// the table, Scope partitions it, and the bound fields narrow the
// index window. Rows always come back binary-encoded.
type TableRowsRequest struct {
	Code          AccountName `json:"code" cramberry:"1"`
	Scope         string      `json:"scope" cramberry:"2"`
	Table         string      `json:"table" cramberry:"3"`
	LowerBound    string      `json:"lower_bound,omitempty" cramberry:"4"`
	UpperBound    string      `json:"upper_bound,omitempty" cramberry:"5"`
	Limit         uint32      `json:"limit,omitempty" cramberry:"6"`
	IndexPosition uint32      `json:"index_position,omitempty" cramberry:"7"`
	Reverse       bool        `json:"reverse,omitempty" cramberry:"8"`
}

// TableRowsResult is the raw get_table_rows envelope: each row is a
// hex string wrapping a separately binary-encoded value, in the
// server-supplied index order. More reports that rows beyond the
// window's limit exist. Use capi.DecodeTableRows to interpret the
// rows against a row shape.
type TableRowsResult struct {
	Rows []string `json:"rows" cramberry:"1"`
	More bool     `json:"more" cramberry:"2"`
}
