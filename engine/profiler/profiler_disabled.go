//go:build !profile

package profiler

// No-op stubs when the profile build tag is not set.

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Export() (string, error) { return "", nil }
