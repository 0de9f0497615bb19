package rdb

// Opcode values, fixed by the RDB wire format.
const (
	OpcodeAux            = 0xFA
	OpcodeFreq           = 0xF9
	OpcodeIdle           = 0xF8
	OpcodeModuleAux      = 0xF7
	OpcodeResizeDB       = 0xFB
	OpcodeExpireTimeMs   = 0xFC
	OpcodeExpireTime     = 0xFD
	OpcodeSelectDB       = 0xFE
	OpcodeEOF            = 0xFF
)

// Value-type opcodes, fixed by the RDB wire format.
const (
	TypeString           = 0
	TypeList             = 1
	TypeSet              = 2
	TypeZSet             = 3
	TypeHash             = 4
	TypeZSet2            = 5
	TypeModule           = 6
	TypeModule2          = 7
	TypeHashZipmap       = 9
	TypeListZiplist      = 10
	TypeSetIntset        = 11
	TypeZSetZiplist      = 12
	TypeHashZiplist      = 13
	TypeListQuicklist    = 14
	TypeStreamListpacks  = 15
	TypeHashListpack     = 16
	TypeZSetListpack     = 17
	TypeListQuicklist2   = 18
	TypeStreamListpacks2 = 19
	TypeSetListpack      = 20
	TypeStreamListpacks3 = 21
)

// String special-encoding tags (LengthCodec top-bits == 11).
const (
	EncInt8  = 0
	EncInt16 = 1
	EncInt32 = 2
	EncLZF   = 3
)

// Quicklist-2 node container kinds.
const (
	QuicklistContainerPlain  = 1
	QuicklistContainerPacked = 2
)

// ASCII-double sentinel length bytes used by legacy zset score encoding.
const (
	doubleLenNegInf = 255
	doubleLenPosInf = 254
	doubleLenNaN    = 253
)
