package taskcodec

// Hooks are lightweight callbacks for high-signal codec and store events.
// Implementations MUST be cheap and non-blocking; wrap slow sinks with hooks/async.
type Hooks interface {
	// A decode failed. kind tells which stage rejected the payload; tag is empty
	// when the discriminator could not be read.
	DecodeRejected(tag string, kind Kind, err error)

	// Lenient decode dropped keys the variant does not declare.
	UnknownFieldsIgnored(tag string, keys []string)

	// The payload exceeded Options.MaxDecodeBytes and was not parsed.
	PayloadTooLarge(size, limit int)

	// The task store deleted an entry it could not read back.
	// reason ∈ {"corrupt", "format_mismatch"}
	StoreSelfHeal(storageKey, reason string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) DecodeRejected(string, Kind, error)     {}
func (NopHooks) UnknownFieldsIgnored(string, []string) {}
func (NopHooks) PayloadTooLarge(int, int)              {}
func (NopHooks) StoreSelfHeal(string, string)          {}
