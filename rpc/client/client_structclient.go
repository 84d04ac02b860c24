package client

import (
	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/rpc/common"
	"github.com/ValentinKolb/rDS/rpc/serializer"
	"github.com/ValentinKolb/rDS/rpc/transport"
)

// NewRPCStructClient creates a new RPC-backed structure client addressing one
// space of a remote server.
// The function takes a space ID, a config, a transport and a serializer as parameters
// It returns a client.IStructClient and an error
func NewRPCStructClient(
	spaceID uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (client.IStructClient, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create a new RPC struct client
	c := rpcStructClient{
		rpcClientAdapter{
			spaceID:    spaceID,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	// Return the RPC struct client
	return &c, nil
}

type rpcStructClient struct {
	rpcClientAdapter
}

// invoke sends req to the client's space and returns the response.
func (c *rpcStructClient) invoke(req *common.Message) (*common.Message, error) {
	return invokeRPCRequest(c.spaceID, req, c.transport, c.serializer)
}

// --------------------------------------------------------------------------
// Interface Methods - List (docu see the client package in interface.go)
// --------------------------------------------------------------------------

func (c *rpcStructClient) ListPush(key string, values ...string) error {
	_, err := c.invoke(common.NewValuesRequest(common.MsgTListPush, key, values))
	return err
}

func (c *rpcStructClient) ListPopHead(key string) (string, bool, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTListPopHead, key))
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *rpcStructClient) ListPopTail(key string) (string, bool, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTListPopTail, key))
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *rpcStructClient) ListIndex(key string, index int64) (string, bool, error) {
	resp, err := c.invoke(common.NewIndexRequest(common.MsgTListIndex, key, index))
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *rpcStructClient) ListSet(key string, index int64, value string) error {
	_, err := c.invoke(common.NewIndexValueRequest(common.MsgTListSet, key, index, value))
	return err
}

func (c *rpcStructClient) ListRange(key string, start, stop int64) ([]string, error) {
	resp, err := c.invoke(common.NewRangeRequest(common.MsgTListRange, key, start, stop))
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *rpcStructClient) ListRemove(key string, count int64, value string) (int64, error) {
	resp, err := c.invoke(common.NewRemoveRequest(key, count, value))
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *rpcStructClient) ListTrim(key string, start, stop int64) error {
	_, err := c.invoke(common.NewRangeRequest(common.MsgTListTrim, key, start, stop))
	return err
}

func (c *rpcStructClient) ListLen(key string) (int64, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTListLen, key))
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// --------------------------------------------------------------------------
// Interface Methods - Set
// --------------------------------------------------------------------------

func (c *rpcStructClient) SetAdd(key string, members ...string) error {
	_, err := c.invoke(common.NewValuesRequest(common.MsgTSetAdd, key, members))
	return err
}

func (c *rpcStructClient) SetRemove(key string, member string) (bool, error) {
	resp, err := c.invoke(common.NewValueRequest(common.MsgTSetRemove, key, member))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (c *rpcStructClient) SetIsMember(key string, member string) (bool, error) {
	resp, err := c.invoke(common.NewValueRequest(common.MsgTSetIsMember, key, member))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (c *rpcStructClient) SetMembers(key string) ([]string, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTSetMembers, key))
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *rpcStructClient) SetCard(key string) (int64, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTSetCard, key))
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *rpcStructClient) SetUnionStore(dst string, keys ...string) error {
	_, err := c.invoke(common.NewStoreRequest(common.MsgTSetUnionStore, dst, keys))
	return err
}

func (c *rpcStructClient) SetInterStore(dst string, keys ...string) error {
	_, err := c.invoke(common.NewStoreRequest(common.MsgTSetInterStore, dst, keys))
	return err
}

func (c *rpcStructClient) SetDiffStore(dst string, keys ...string) error {
	_, err := c.invoke(common.NewStoreRequest(common.MsgTSetDiffStore, dst, keys))
	return err
}

func (c *rpcStructClient) SetInter(keys ...string) ([]string, error) {
	resp, err := c.invoke(common.NewKeysRequest(common.MsgTSetInter, keys))
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *rpcStructClient) SetPop(key string) (string, bool, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTSetPop, key))
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

// --------------------------------------------------------------------------
// Interface Methods - Hash
// --------------------------------------------------------------------------

func (c *rpcStructClient) HashSet(key, field, value string) error {
	_, err := c.invoke(common.NewFieldValueRequest(key, field, value))
	return err
}

func (c *rpcStructClient) HashGet(key, field string) (string, bool, error) {
	resp, err := c.invoke(common.NewFieldRequest(common.MsgTHashGet, key, field))
	if err != nil {
		return "", false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *rpcStructClient) HashDel(key, field string) (bool, error) {
	resp, err := c.invoke(common.NewFieldRequest(common.MsgTHashDel, key, field))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (c *rpcStructClient) HashGetAll(key string) (map[string]string, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTHashGetAll, key))
	if err != nil {
		return nil, err
	}
	if resp.Fields == nil {
		return map[string]string{}, nil
	}
	return resp.Fields, nil
}

func (c *rpcStructClient) HashKeys(key string) ([]string, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTHashKeys, key))
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *rpcStructClient) HashValues(key string) ([]string, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTHashValues, key))
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *rpcStructClient) HashLen(key string) (int64, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTHashLen, key))
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// --------------------------------------------------------------------------
// Interface Methods - Keys
// --------------------------------------------------------------------------

func (c *rpcStructClient) Delete(key string) error {
	_, err := c.invoke(common.NewKeyRequest(common.MsgTKeyDelete, key))
	return err
}

func (c *rpcStructClient) Exists(key string) (bool, error) {
	resp, err := c.invoke(common.NewKeyRequest(common.MsgTKeyExists, key))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}
