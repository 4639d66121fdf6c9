package testutil

// Fixed identifiers for deterministic tests.
const (
	TestClientID  = "00000000-0000-0000-0000-000000000001"
	TestClientID2 = "00000000-0000-0000-0000-000000000002"
	TestHouseID   = "00000000-0000-0000-0000-000000000100"
	TestConfigID  = "00000000-0000-0000-0000-000000000200"
)
