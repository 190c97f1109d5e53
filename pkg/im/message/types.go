package message

// Type aliases for Matter data types used in Interaction Model messages.

type (
	// EndpointID is an 8-bit endpoint identifier (Section 3).
	EndpointID uint8

	// ClusterID is a 32-bit cluster identifier.
	ClusterID uint32

	// AttributeID is a 32-bit attribute identifier.
	AttributeID uint32

	// DataVersion is a 32-bit version number for attribute data.
	DataVersion uint32

	// SubscriptionID is a 32-bit subscription identifier.
	SubscriptionID uint32
)

// Ptr returns a pointer to v. Useful for setting optional fields in IBs.
func Ptr[T any](v T) *T {
	return &v
}
