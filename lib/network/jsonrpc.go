package network

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/agora/lib/storage"
)

// JSONRPCEndpointPath is where the inspection service is mounted.
const JSONRPCEndpointPath = "/jsonrpc"

// MaxLimitListOptions caps how many records one GetIterator call returns.
const MaxLimitListOptions uint64 = 10000

type DBEchoArgs string
type DBEchoResult string

type DBHasArgs string
type DBHasResult bool

type DBGetArgs string
type DBGetResult storage.IterItem

type GetIteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

type DBGetIteratorArgs struct {
	Prefix  string
	Options GetIteratorOptions
}

type DBGetIteratorResult struct {
	Limit uint64
	Items []storage.IterItem
}

// jsonrpcDBApp exposes raw storage records for operational inspection;
// it never mutates the database.
type jsonrpcDBApp struct {
	st *storage.LevelDBBackend
}

func (j *jsonrpcDBApp) Echo(r *http.Request, args *DBEchoArgs, result *DBEchoResult) error {
	*result = DBEchoResult(string(*args))
	return nil
}

func (j *jsonrpcDBApp) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	o, err := j.st.Has(string(*args))
	if err != nil {
		return err
	}

	*result = DBHasResult(o)
	return nil
}

func (j *jsonrpcDBApp) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	o, err := j.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = DBGetResult{Key: []byte(*args), Value: o}
	return nil
}

func (j *jsonrpcDBApp) GetIterator(r *http.Request, args *DBGetIteratorArgs, result *DBGetIteratorResult) error {
	limit := args.Options.Limit
	if limit == 0 || limit > MaxLimitListOptions {
		limit = MaxLimitListOptions
	}

	options := &storage.IteratorOptions{
		Reverse: args.Options.Reverse,
		Cursor:  args.Options.Cursor,
		Limit:   limit,
	}

	it, closeFunc := j.st.GetIterator(args.Prefix, options)
	defer closeFunc()

	collected := []storage.IterItem{}
	for {
		v, hasNext := it()
		if !hasNext {
			break
		}

		collected = append(collected, v.Clone())
	}

	result.Items = collected
	result.Limit = limit

	return nil
}

type JSONRPCServer struct {
	bind   string
	st     *storage.LevelDBBackend
	server *http.Server
}

func NewJSONRPCServer(bind string, st *storage.LevelDBBackend) *JSONRPCServer {
	return &JSONRPCServer{
		bind: bind,
		st:   st,
	}
}

type jsonrpcInternalServer struct {
	*rpc.Server
}

func (s *jsonrpcInternalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	)

	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

func (j *JSONRPCServer) Ready() *mux.Router {
	s := &jsonrpcInternalServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	dbApp := &jsonrpcDBApp{st: j.st}
	s.RegisterService(dbApp, "DB")

	router := mux.NewRouter()
	router.Handle(JSONRPCEndpointPath, s)

	return router
}

func (j *JSONRPCServer) Start() error {
	j.server = &http.Server{Addr: j.bind, Handler: j.Ready()}

	log.Info("jsonrpc server started", "bind", j.bind)
	if err := j.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (j *JSONRPCServer) Stop(ctx context.Context) error {
	if j.server == nil {
		return nil
	}

	return j.server.Shutdown(ctx)
}
