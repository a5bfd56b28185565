package rpc

import (
	"net"
	"net/rpc"

	"github.com/ExClawYay/CodeNames/logger"
	"github.com/ExClawYay/CodeNames/models"
	"github.com/ExClawYay/CodeNames/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services must be registered with the
// rpc package before Start is called.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// StatsRPC exposes player statistics over net/rpc.
type StatsRPC struct {
	stats *services.StatsService
}

func NewStatsRPC(stats *services.StatsService) *StatsRPC {
	return &StatsRPC{stats: stats}
}

// GetPlayerStats follows the net/rpc signature: exported method, exported
// arguments, second argument is a pointer, return type is error.
type GetPlayerStatsArgs struct {
	PlayerID string
}

type GetPlayerStatsReply struct {
	Stats *models.PlayerStats
}

func (r *StatsRPC) GetPlayerStats(args *GetPlayerStatsArgs, reply *GetPlayerStatsReply) error {
	stats, err := r.stats.GetPlayerStats(args.PlayerID)
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}
