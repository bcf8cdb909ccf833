package format

// Bit masks for the CAN_MESSAGE / CAN_MESSAGE2 "flags" byte.
const (
	CANDirMask uint8 = 0x03 // 2-bit direction field
	CANRtrMask uint8 = 0x10 // remote transmission request
)

// Bit masks for the CAN_FD_MESSAGE "fd_flags" field.
const (
	CANFDFdfMask uint32 = 0x0001
	CANFDBrsMask uint32 = 0x0002
	CANFDEsiMask uint32 = 0x0004
)

// Bit masks for the CAN_FD_MESSAGE_64 "flags" field.
const (
	CANFD64FdfMask uint32 = 0x0001
	CANFD64BrsMask uint32 = 0x0002
	CANFD64EsiMask uint32 = 0x0004
	CANFD64RtrMask uint32 = 0x0008
)
