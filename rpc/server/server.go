package server

import (
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ValentinKolb/rDS/lib/client"
	"github.com/ValentinKolb/rDS/lib/client/lclient"
	"github.com/ValentinKolb/rDS/rpc/common"
	"github.com/ValentinKolb/rDS/rpc/serializer"
	"github.com/ValentinKolb/rDS/rpc/transport"
	vm "github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("rpc")

// serverSpace is a struct that represents one space hosted by the RPC server
// It contains the structure client backing the space and the adapter
// that handles requests for it
type serverSpace struct {
	Client  client.IStructClient
	Adapter IRPCServerAdapter
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPDefaultServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	// Create spaces map
	spaceMap := xsync.NewMapOf[uint64, serverSpace]()

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	// Create the RPC server
	return rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		spaces:     spaceMap,
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	spaces     *xsync.MapOf[uint64, serverSpace]
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(spaceID uint64, req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		start := time.Now()

		// Get appropriate space
		space, ok := s.spaces.Load(spaceID)

		// Case space does not exist -> error
		if !ok {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     "space not found",
			}
		} else {
			// Decode the request
			err := s.serializer.Deserialize(req, &msg)

			if err != nil {
				respMsg = common.Message{
					MsgType: common.MsgTError,
					Err:     fmt.Sprintf("failed to deserialize request: %s", err),
				}
			} else {
				// Let the adapter handle the request
				respMsg = *space.Adapter.Handle(&msg, space.Client)
			}
		}

		s.recordRequest(msg.MsgType, &respMsg, start)

		// Return result
		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     fmt.Sprintf("failed to serialize response: %s", err),
			}
			val, _ = s.serializer.Serialize(respMsg)
		}
		return val
	})
}

// recordRequest updates the per-operation counters and latency summaries
func (s *rpcServer) recordRequest(msgType common.MessageType, resp *common.Message, start time.Time) {
	if s.config.MetricsEndpoint == "" {
		return
	}
	op := msgType.String()
	vm.GetOrCreateCounter(fmt.Sprintf(`rds_rpc_requests_total{op=%q}`, op)).Inc()
	if resp.MsgType == common.MsgTError {
		vm.GetOrCreateCounter(fmt.Sprintf(`rds_rpc_errors_total{op=%q}`, op)).Inc()
	}
	vm.GetOrCreateSummary(fmt.Sprintf(`rds_rpc_request_duration_seconds{op=%q}`, op)).UpdateDuration(start)
}

// serveMetrics starts the Prometheus scrape endpoint if one is configured
func (s *rpcServer) serveMetrics() {
	if s.config.MetricsEndpoint == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
			vm.WritePrometheus(w, true)
		})
		Logger.Infof("serving metrics on %s", s.config.MetricsEndpoint)
		if err := http.ListenAndServe(s.config.MetricsEndpoint, mux); err != nil {
			Logger.Errorf("metrics endpoint failed: %v", err)
		}
	}()
}

func (s *rpcServer) init() error {

	// Init logger
	common.InitLoggers(s.config.LogLevel)

	// CREATE SPACES

	/*
		Note: A single RPC server can host any number of spaces. Each space
		is an isolated keyspace backed by its own in-process structure store.
		The following loop creates all the spaces for the RPC server.
	*/

	for _, spaceID := range s.config.Spaces {
		if _, loaded := s.spaces.LoadOrStore(spaceID, serverSpace{
			Client:  lclient.NewLocalStructClient(),
			Adapter: NewStructClientServerAdapter(),
		}); loaded {
			return fmt.Errorf("duplicate space ID in config: %d", spaceID)
		}
		Logger.Infof("created structure store for space %d", spaceID)
	}

	Logger.Infof("rDS setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	// Start the metrics endpoint (no-op if disabled)
	s.serveMetrics()

	return nil
}

// Serve starts the RPC server
// This function will also initialize the server plus the spaces and start the transport layer
func (s *rpcServer) Serve() error {
	err := s.init()
	if err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}
