package server

import (
	"fmt"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/rpc/common"
)

// NewStructClientServerAdapter creates the adapter translating protocol
// messages into IStructClient calls against a space's store.
func NewStructClientServerAdapter() IRPCServerAdapter {
	return &structClientServerAdapterImpl{}
}

type structClientServerAdapterImpl struct{}

func (adapter *structClientServerAdapterImpl) Handle(req *common.Message, c client.IStructClient) *common.Message {
	// Check for nil client
	if c == nil {
		return common.NewErrorResponse("handler: client is nil")
	}

	// Handle different message types
	switch req.MsgType {

	// List operations

	case common.MsgTListPush:
		err := c.ListPush(req.Key, req.Values...)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTListPopHead:
		value, ok, err := c.ListPopHead(req.Key)
		return common.NewValueResponse(req.MsgType, value, ok, err)
	case common.MsgTListPopTail:
		value, ok, err := c.ListPopTail(req.Key)
		return common.NewValueResponse(req.MsgType, value, ok, err)
	case common.MsgTListIndex:
		value, ok, err := c.ListIndex(req.Key, req.Index)
		return common.NewValueResponse(req.MsgType, value, ok, err)
	case common.MsgTListSet:
		err := c.ListSet(req.Key, req.Index, req.Value)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTListRange:
		values, err := c.ListRange(req.Key, req.Start, req.Stop)
		return common.NewValuesResponse(req.MsgType, values, err)
	case common.MsgTListRemove:
		removed, err := c.ListRemove(req.Key, req.Count, req.Value)
		return common.NewCountResponse(req.MsgType, removed, err)
	case common.MsgTListTrim:
		err := c.ListTrim(req.Key, req.Start, req.Stop)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTListLen:
		length, err := c.ListLen(req.Key)
		return common.NewCountResponse(req.MsgType, length, err)

	// Set operations

	case common.MsgTSetAdd:
		err := c.SetAdd(req.Key, req.Values...)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTSetRemove:
		removed, err := c.SetRemove(req.Key, req.Value)
		return common.NewOkResponse(req.MsgType, removed, err)
	case common.MsgTSetIsMember:
		ok, err := c.SetIsMember(req.Key, req.Value)
		return common.NewOkResponse(req.MsgType, ok, err)
	case common.MsgTSetMembers:
		members, err := c.SetMembers(req.Key)
		return common.NewValuesResponse(req.MsgType, members, err)
	case common.MsgTSetCard:
		card, err := c.SetCard(req.Key)
		return common.NewCountResponse(req.MsgType, card, err)
	case common.MsgTSetUnionStore:
		err := c.SetUnionStore(req.Dest, req.Keys...)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTSetInterStore:
		err := c.SetInterStore(req.Dest, req.Keys...)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTSetDiffStore:
		err := c.SetDiffStore(req.Dest, req.Keys...)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTSetInter:
		members, err := c.SetInter(req.Keys...)
		return common.NewValuesResponse(req.MsgType, members, err)
	case common.MsgTSetPop:
		member, ok, err := c.SetPop(req.Key)
		return common.NewValueResponse(req.MsgType, member, ok, err)

	// Hash operations

	case common.MsgTHashSet:
		err := c.HashSet(req.Key, req.Field, req.Value)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTHashGet:
		value, ok, err := c.HashGet(req.Key, req.Field)
		return common.NewValueResponse(req.MsgType, value, ok, err)
	case common.MsgTHashDel:
		deleted, err := c.HashDel(req.Key, req.Field)
		return common.NewOkResponse(req.MsgType, deleted, err)
	case common.MsgTHashGetAll:
		fields, err := c.HashGetAll(req.Key)
		return common.NewFieldsResponse(fields, err)
	case common.MsgTHashKeys:
		fields, err := c.HashKeys(req.Key)
		return common.NewValuesResponse(req.MsgType, fields, err)
	case common.MsgTHashValues:
		values, err := c.HashValues(req.Key)
		return common.NewValuesResponse(req.MsgType, values, err)
	case common.MsgTHashLen:
		length, err := c.HashLen(req.Key)
		return common.NewCountResponse(req.MsgType, length, err)

	// Key operations

	case common.MsgTKeyDelete:
		err := c.Delete(req.Key)
		return common.NewAckResponse(req.MsgType, err)
	case common.MsgTKeyExists:
		ok, err := c.Exists(req.Key)
		return common.NewOkResponse(req.MsgType, ok, err)

	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC StructClientAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
