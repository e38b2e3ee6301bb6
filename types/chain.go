package types

// ChainInfo is the node's answer to get_info: the identity of the
// chain plus a snapshot of its head and last irreversible block.
// Transaction construction reads the irreversible fields, never the
// head fields, for its reference block.
type ChainInfo struct {
	ServerVersion            string      `json:"server_version" cramberry:"1"`
	ChainID                  Checksum256 `json:"chain_id" cramberry:"2"`
	HeadBlockNum             uint32      `json:"head_block_num" cramberry:"3"`
	LastIrreversibleBlockNum uint32      `json:"last_irreversible_block_num" cramberry:"4"`
	LastIrreversibleBlockID  Checksum256 `json:"last_irreversible_block_id" cramberry:"5"`
	HeadBlockID              Checksum256 `json:"head_block_id" cramberry:"6"`
	HeadBlockTime            TimePoint   `json:"head_block_time" cramberry:"7"`
	HeadBlockProducer        AccountName `json:"head_block_producer" cramberry:"8"`
	VirtualBlockCPULimit     uint64      `json:"virtual_block_cpu_limit" cramberry:"9"`
	VirtualBlockNetLimit     uint64      `json:"virtual_block_net_limit" cramberry:"10"`
	BlockCPULimit            uint64      `json:"block_cpu_limit" cramberry:"11"`
	BlockNetLimit            uint64      `json:"block_net_limit" cramberry:"12"`
	ServerVersionString      string      `json:"server_version_string,omitempty" cramberry:"13"`
}

// Block is the node's answer to get_block.
type Block struct {
	ID               Checksum256        `json:"id" cramberry:"1"`
	BlockNum         uint32             `json:"block_num" cramberry:"2"`
	Timestamp        TimePoint          `json:"timestamp" cramberry:"3"`
	Producer         AccountName        `json:"producer" cramberry:"4"`
	Confirmed        uint16             `json:"confirmed" cramberry:"5"`
	Previous         Checksum256        `json:"previous" cramberry:"6"`
	TransactionMroot Checksum256        `json:"transaction_mroot" cramberry:"7"`
	ActionMroot      Checksum256        `json:"action_mroot" cramberry:"8"`
	ScheduleVersion  uint32             `json:"schedule_version" cramberry:"9"`
	RefBlockPrefix   uint32             `json:"ref_block_prefix" cramberry:"10"`
	Transactions     []BlockTransaction `json:"transactions" cramberry:"11"`
}

// BlockTransaction is one transaction receipt inside a block. Trx is
// either a bare transaction id string or a full packed-transaction
// object depending on how the transaction entered the block, so its
// schema is not fixed.
type BlockTransaction struct {
	Status        string `json:"status" cramberry:"1"`
	CPUUsageUs    uint32 `json:"cpu_usage_us" cramberry:"2"`
	NetUsageWords uint32 `json:"net_usage_words" cramberry:"3"`
	Trx           Any    `json:"trx" cramberry:"4"`
}
