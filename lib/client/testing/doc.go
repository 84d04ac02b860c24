// Package testing provides a reusable conformance test suite for
// implementations of the client.IStructClient interface.
//
// An implementation package runs the whole suite through a single factory
// call:
//
//	func Test(t *testing.T) {
//	    clienttesting.RunStructClientTests(t, "LocalStructClient", func() client.IStructClient {
//	        return lclient.NewLocalStructClient()
//	    })
//	}
//
// The suite covers the list, set and hash primitive surfaces, the shared key
// operations, negative index resolution and the RetCWrongType behavior on
// kind mismatches.
package testing
