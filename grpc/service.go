package capigrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/capi/types"

	"google.golang.org/grpc"
)

const serviceName = "github.com/blockberries/capi.v1.NodeService"

// NodeServiceServer is the server-side interface for the chain node
// gRPC service.
type NodeServiceServer interface {
	Info(context.Context, *InfoRequest) (*types.ChainInfo, error)
	Block(context.Context, *types.BlockParams) (*types.Block, error)
	Account(context.Context, *types.AccountParams) (*types.AccountInfo, error)
	Code(context.Context, *types.AccountParams) (*types.CodeResult, error)
	ABI(context.Context, *types.AccountParams) (*types.ABIResult, error)
	CurrencyBalance(context.Context, *types.CurrencyBalanceParams) (*CurrencyBalanceResponse, error)
	TableRows(context.Context, *types.TableRowsRequest) (*types.TableRowsResult, error)
	PushTransaction(context.Context, *types.PackedTransaction) (*types.PushTransactionResult, error)
}

// RegisterNodeServiceServer registers the NodeServiceServer on a gRPC
// server.
func RegisterNodeServiceServer(s *grpc.Server, srv NodeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerInfo(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(InfoRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).Info(ctx, req)
}

func handlerBlock(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.BlockParams)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).Block(ctx, req)
}

func handlerAccount(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.AccountParams)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).Account(ctx, req)
}

func handlerCode(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.AccountParams)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).Code(ctx, req)
}

func handlerABI(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.AccountParams)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).ABI(ctx, req)
}

func handlerCurrencyBalance(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.CurrencyBalanceParams)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).CurrencyBalance(ctx, req)
}

func handlerTableRows(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.TableRowsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).TableRows(ctx, req)
}

func handlerPushTransaction(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.PackedTransaction)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(NodeServiceServer).PushTransaction(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for the chain
// node service.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NodeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Info", Handler: handlerInfo},
		{MethodName: "Block", Handler: handlerBlock},
		{MethodName: "Account", Handler: handlerAccount},
		{MethodName: "Code", Handler: handlerCode},
		{MethodName: "ABI", Handler: handlerABI},
		{MethodName: "CurrencyBalance", Handler: handlerCurrencyBalance},
		{MethodName: "TableRows", Handler: handlerTableRows},
		{MethodName: "PushTransaction", Handler: handlerPushTransaction},
	},
	Metadata: "github.com/blockberries/capi/v1/service.cram",
}
