package server

import (
	"sort"
	"testing"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/lib/client/lclient"
	"github.com/ValentinKolb/rDS/rpc/common"
)

// mustHandle runs one request through the adapter and fails the test on a
// response that carries an unexpected error.
func mustHandle(t *testing.T, adapter IRPCServerAdapter, c client.IStructClient, req *common.Message) *common.Message {
	t.Helper()
	resp := adapter.Handle(req, c)
	if resp.Err != "" {
		t.Fatalf("%s: unexpected error response: %s", req.MsgType, resp.Err)
	}
	if resp.MsgType != req.MsgType {
		t.Fatalf("response type mismatch: got %s, want %s", resp.MsgType, req.MsgType)
	}
	return resp
}

func TestAdapterListRoundTrip(t *testing.T) {
	adapter := NewStructClientServerAdapter()
	c := lclient.NewLocalStructClient()

	mustHandle(t, adapter, c, common.NewValuesRequest(common.MsgTListPush, "l", []string{"a", "b", "c"}))

	resp := mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTListLen, "l"))
	if resp.Count != 3 {
		t.Fatalf("expected length 3, got %d", resp.Count)
	}

	resp = mustHandle(t, adapter, c, common.NewIndexRequest(common.MsgTListIndex, "l", -1))
	if !resp.Ok || resp.Value != "c" {
		t.Fatalf("expected (c, true), got (%s, %v)", resp.Value, resp.Ok)
	}

	mustHandle(t, adapter, c, common.NewIndexValueRequest(common.MsgTListSet, "l", 1, "B"))

	resp = mustHandle(t, adapter, c, common.NewRangeRequest(common.MsgTListRange, "l", 0, -1))
	want := []string{"a", "B", "c"}
	if len(resp.Values) != len(want) {
		t.Fatalf("expected %v, got %v", want, resp.Values)
	}
	for i := range want {
		if resp.Values[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, resp.Values)
		}
	}

	resp = mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTListPopTail, "l"))
	if !resp.Ok || resp.Value != "c" {
		t.Fatalf("expected to pop c, got (%s, %v)", resp.Value, resp.Ok)
	}

	resp = mustHandle(t, adapter, c, common.NewRemoveRequest("l", 0, "B"))
	if resp.Count != 1 {
		t.Fatalf("expected 1 removal, got %d", resp.Count)
	}
}

func TestAdapterSetRoundTrip(t *testing.T) {
	adapter := NewStructClientServerAdapter()
	c := lclient.NewLocalStructClient()

	mustHandle(t, adapter, c, common.NewValuesRequest(common.MsgTSetAdd, "s1", []string{"1", "2", "3"}))
	mustHandle(t, adapter, c, common.NewValuesRequest(common.MsgTSetAdd, "s2", []string{"2", "3", "4"}))

	resp := mustHandle(t, adapter, c, common.NewValueRequest(common.MsgTSetIsMember, "s1", "2"))
	if !resp.Ok {
		t.Fatalf("expected 2 to be a member of s1")
	}

	resp = mustHandle(t, adapter, c, common.NewKeysRequest(common.MsgTSetInter, []string{"s1", "s2"}))
	sort.Strings(resp.Values)
	if len(resp.Values) != 2 || resp.Values[0] != "2" || resp.Values[1] != "3" {
		t.Fatalf("expected intersection [2 3], got %v", resp.Values)
	}

	mustHandle(t, adapter, c, common.NewStoreRequest(common.MsgTSetUnionStore, "dst", []string{"s1", "s2"}))
	resp = mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTSetCard, "dst"))
	if resp.Count != 4 {
		t.Fatalf("expected union cardinality 4, got %d", resp.Count)
	}

	resp = mustHandle(t, adapter, c, common.NewValueRequest(common.MsgTSetRemove, "s1", "1"))
	if !resp.Ok {
		t.Fatalf("expected removal of 1 from s1")
	}
}

func TestAdapterHashRoundTrip(t *testing.T) {
	adapter := NewStructClientServerAdapter()
	c := lclient.NewLocalStructClient()

	mustHandle(t, adapter, c, common.NewFieldValueRequest("h", "name", "alice"))
	mustHandle(t, adapter, c, common.NewFieldValueRequest("h", "role", "admin"))

	resp := mustHandle(t, adapter, c, common.NewFieldRequest(common.MsgTHashGet, "h", "name"))
	if !resp.Ok || resp.Value != "alice" {
		t.Fatalf("expected (alice, true), got (%s, %v)", resp.Value, resp.Ok)
	}

	resp = mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTHashGetAll, "h"))
	if len(resp.Fields) != 2 || resp.Fields["role"] != "admin" {
		t.Fatalf("unexpected fields: %v", resp.Fields)
	}

	resp = mustHandle(t, adapter, c, common.NewFieldRequest(common.MsgTHashDel, "h", "role"))
	if !resp.Ok {
		t.Fatalf("expected deletion of field role")
	}

	resp = mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTHashLen, "h"))
	if resp.Count != 1 {
		t.Fatalf("expected 1 remaining field, got %d", resp.Count)
	}
}

func TestAdapterKeyLifecycle(t *testing.T) {
	adapter := NewStructClientServerAdapter()
	c := lclient.NewLocalStructClient()

	mustHandle(t, adapter, c, common.NewValuesRequest(common.MsgTSetAdd, "s", []string{"x"}))

	resp := mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTKeyExists, "s"))
	if !resp.Ok {
		t.Fatalf("expected key to exist")
	}

	mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTKeyDelete, "s"))

	resp = mustHandle(t, adapter, c, common.NewKeyRequest(common.MsgTKeyExists, "s"))
	if resp.Ok {
		t.Fatalf("expected key to be gone after delete")
	}
}

// The error category reported by the store must survive the response message,
// so the far side can rebuild it and match it with client.HasCode.
func TestAdapterErrorCodeSurvives(t *testing.T) {
	adapter := NewStructClientServerAdapter()
	c := lclient.NewLocalStructClient()

	mustHandle(t, adapter, c, common.NewValuesRequest(common.MsgTListPush, "l", []string{"a"}))

	resp := adapter.Handle(common.NewFieldValueRequest("l", "f", "v"), c)
	if resp.Err == "" {
		t.Fatalf("expected hash write on a list key to fail")
	}
	if !client.HasCode(resp.RemoteErr(), client.RetCWrongType) {
		t.Fatalf("expected wrong type category, got code %d (%s)", resp.Code, resp.Err)
	}

	resp = adapter.Handle(common.NewIndexValueRequest(common.MsgTListSet, "l", 10, "x"), c)
	if !client.HasCode(resp.RemoteErr(), client.RetCOutOfRange) {
		t.Fatalf("expected out of range category, got code %d (%s)", resp.Code, resp.Err)
	}
}

func TestAdapterUnsupportedMessageType(t *testing.T) {
	adapter := NewStructClientServerAdapter()
	c := lclient.NewLocalStructClient()

	resp := adapter.Handle(&common.Message{MsgType: common.MsgTSuccess}, c)
	if resp.MsgType != common.MsgTError || resp.Err == "" {
		t.Fatalf("expected error response for unsupported type, got %s", resp.MsgType)
	}
}

func TestAdapterNilClient(t *testing.T) {
	adapter := NewStructClientServerAdapter()

	resp := adapter.Handle(common.NewKeyRequest(common.MsgTListLen, "l"), nil)
	if resp.MsgType != common.MsgTError || resp.Err == "" {
		t.Fatalf("expected error response for nil client")
	}
}
