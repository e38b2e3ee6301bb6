package capigrpc

import (
	"context"
	"net"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ NodeServiceServer = (*NodeServer)(nil)

// NodeServer serves a backend capi.Node over gRPC. The backend is
// typically a fixture node in tests, or another transport's client
// when proxying.
type NodeServer struct {
	node capi.Node
}

// NewNodeServer creates a gRPC server wrapping the given backend.
func NewNodeServer(node capi.Node) *NodeServer {
	return &NodeServer{node: node}
}

// Register adds the node service to a gRPC server.
func (s *NodeServer) Register(gs *grpc.Server) {
	RegisterNodeServiceServer(gs, s)
}

// Serve starts a gRPC server on the given listener.
func (s *NodeServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// --- Node RPCs ---

func (s *NodeServer) Info(ctx context.Context, _ *InfoRequest) (*types.ChainInfo, error) {
	info, err := s.node.Info(ctx)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *NodeServer) Block(ctx context.Context, req *types.BlockParams) (*types.Block, error) {
	block, err := s.node.Block(ctx, req.BlockNumOrID)
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (s *NodeServer) Account(ctx context.Context, req *types.AccountParams) (*types.AccountInfo, error) {
	account, err := s.node.Account(ctx, req.AccountName)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *NodeServer) Code(ctx context.Context, req *types.AccountParams) (*types.CodeResult, error) {
	code, err := s.node.Code(ctx, req.AccountName)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *NodeServer) ABI(ctx context.Context, req *types.AccountParams) (*types.ABIResult, error) {
	abi, err := s.node.ABI(ctx, req.AccountName)
	if err != nil {
		return nil, err
	}
	return &abi, nil
}

func (s *NodeServer) CurrencyBalance(ctx context.Context, req *types.CurrencyBalanceParams) (*CurrencyBalanceResponse, error) {
	balances, err := s.node.CurrencyBalance(ctx, req.Code, req.Account, req.Symbol)
	if err != nil {
		return nil, err
	}
	return &CurrencyBalanceResponse{Balances: balances}, nil
}

func (s *NodeServer) TableRows(ctx context.Context, req *types.TableRowsRequest) (*types.TableRowsResult, error) {
	res, err := s.node.TableRows(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *NodeServer) PushTransaction(ctx context.Context, req *types.PackedTransaction) (*types.PushTransactionResult, error) {
	result, err := s.node.PushTransaction(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
