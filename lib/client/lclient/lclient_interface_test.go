package lclient

import (
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
	clienttesting "github.com/ValentinKolb/rDS/lib/client/testing"
)

// Test runs the shared conformance suite against the in-process client.
func Test(t *testing.T) {
	clienttesting.RunStructClientTests(t, "LocalStructClient", func() client.IStructClient {
		return NewLocalStructClient()
	})
}
