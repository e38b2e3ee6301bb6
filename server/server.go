// Package server exposes any capi.Node as the node's HTTP/JSON API.
//
// It is the serving half of the capihttp transport: typed results are
// encoded back into the tagged JSON the node would produce, and
// errors are mapped to the node's error envelope. It backs fixture
// nodes in tests and proxy deployments in front of another transport.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/blockberries/capi"
	"github.com/blockberries/capi/types"
)

// Compile-time interface check.
var _ http.Handler = (*Server)(nil)

// Server serves the chain API paths under /v1/chain/ from a backend
// Node.
type Server struct {
	node capi.Node
	mux  *http.ServeMux
}

// New creates a Server backed by the given node.
func New(node capi.Node) *Server {
	s := &Server{node: node, mux: http.NewServeMux()}
	s.mux.HandleFunc("/v1/chain/get_info", s.handleInfo)
	s.mux.HandleFunc("/v1/chain/get_block", s.handleBlock)
	s.mux.HandleFunc("/v1/chain/get_account", s.handleAccount)
	s.mux.HandleFunc("/v1/chain/get_code", s.handleCode)
	s.mux.HandleFunc("/v1/chain/get_abi", s.handleABI)
	s.mux.HandleFunc("/v1/chain/get_currency_balance", s.handleCurrencyBalance)
	s.mux.HandleFunc("/v1/chain/get_table_rows", s.handleTableRows)
	s.mux.HandleFunc("/v1/chain/push_transaction", s.handlePushTransaction)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.node.Info(r.Context())
	s.reply(w, info, err)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	var params types.BlockParams
	if !s.decode(w, r, &params) {
		return
	}
	block, err := s.node.Block(r.Context(), params.BlockNumOrID)
	s.reply(w, block, err)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	var params types.AccountParams
	if !s.decode(w, r, &params) {
		return
	}
	account, err := s.node.Account(r.Context(), params.AccountName)
	s.reply(w, account, err)
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	var params types.AccountParams
	if !s.decode(w, r, &params) {
		return
	}
	code, err := s.node.Code(r.Context(), params.AccountName)
	s.reply(w, code, err)
}

func (s *Server) handleABI(w http.ResponseWriter, r *http.Request) {
	var params types.AccountParams
	if !s.decode(w, r, &params) {
		return
	}
	abi, err := s.node.ABI(r.Context(), params.AccountName)
	s.reply(w, abi, err)
}

func (s *Server) handleCurrencyBalance(w http.ResponseWriter, r *http.Request) {
	var params types.CurrencyBalanceParams
	if !s.decode(w, r, &params) {
		return
	}
	balances, err := s.node.CurrencyBalance(r.Context(), params.Code, params.Account, params.Symbol)
	if balances == nil {
		balances = []types.Asset{}
	}
	s.reply(w, balances, err)
}

func (s *Server) handleTableRows(w http.ResponseWriter, r *http.Request) {
	var req types.TableRowsRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.node.TableRows(r.Context(), req)
	s.reply(w, res, err)
}

func (s *Server) handlePushTransaction(w http.ResponseWriter, r *http.Request) {
	var tx types.PackedTransaction
	if !s.decode(w, r, &tx) {
		return
	}
	result, err := s.node.PushTransaction(r.Context(), tx)
	s.reply(w, result, err)
}

// decode reads the request body into params, answering with the error
// envelope on malformed input.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, params any) bool {
	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		s.writeError(w, &capi.APIError{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
			What:    err.Error(),
		})
		return false
	}
	return true
}

// reply writes either the result or the error envelope.
func (s *Server) reply(w http.ResponseWriter, result any, err error) {
	if err != nil {
		if apiErr, ok := capi.IsAPI(err); ok {
			s.writeError(w, apiErr)
			return
		}
		s.writeError(w, &capi.APIError{
			Code:    http.StatusInternalServerError,
			Message: "internal service error",
			What:    err.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		// Headers are already written; the response dies mid-body.
		log.Printf("capi server: encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, apiErr *capi.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	_ = json.NewEncoder(w).Encode(apiErr)
}
