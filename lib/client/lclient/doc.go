// Package lclient provides the in-process implementation of the
// client.IStructClient interface. All structures live in a concurrent map of
// kind-tagged containers; every primitive takes exactly one container lock,
// which makes each call atomic on its own (matching the single-command
// atomicity of a real remote store).
//
// The implementation mirrors the lifecycle of the modeled store: a key is
// created by the first mutating call and disappears again once its structure
// becomes empty, so an empty structure and an absent key are
// indistinguishable to readers.
//
// lclient is used directly by the rDS server (one instance per space) and by
// the test suites of lib/ds, which run the adapters against it without a
// network.
package lclient
