package protocol

// DeviceID addresses a single device on a bus. 0 is reserved for Broadcast,
// 255 for NotAssigned; real devices use 1..254.
type DeviceID byte

// BusID distinguishes multiple logical buses sharing one physical medium.
// Equality is byte-wise.
type BusID [4]byte

// Localhost is the all-zero bus id. A device whose BusID equals Localhost
// is "local": bus ids are elided from the wire entirely.
var Localhost = BusID{0, 0, 0, 0}

// IsLocal reports whether b denotes the unshared/local bus.
func (b BusID) IsLocal() bool { return b == Localhost }

// Equal reports byte-wise equality with other.
func (b BusID) Equal(other BusID) bool { return b == other }
