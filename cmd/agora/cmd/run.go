package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/http2"

	handlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"boscoin.io/agora/cmd/agora/common"
	agoracommon "boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/metrics"
	"boscoin.io/agora/lib/network"
	"boscoin.io/agora/lib/network/api"
	"boscoin.io/agora/lib/network/httpcache"
	"boscoin.io/agora/lib/proposal"
	"boscoin.io/agora/lib/referendum"
	"boscoin.io/agora/lib/storage"
)

const defaultBind string = "0.0.0.0:12345"
const defaultLogLevel logging.Lvl = logging.LvlInfo
const defaultCacheTTL time.Duration = 3 * time.Second

var (
	flagBind        string = agoracommon.GetENVValue("AGORA_BIND", defaultBind)
	flagLogLevel    string = agoracommon.GetENVValue("AGORA_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput   string = agoracommon.GetENVValue("AGORA_LOG_OUTPUT", "")
	flagVerbose     bool   = agoracommon.GetENVValue("AGORA_VERBOSE", "0") == "1"
	flagTLSCertFile string = agoracommon.GetENVValue("AGORA_TLS_CERT", "")
	flagTLSKeyFile  string = agoracommon.GetENVValue("AGORA_TLS_KEY", "")
	flagNTPServer   string = agoracommon.GetENVValue("AGORA_NTP_SERVER", "")
	flagJSONRPCBind string = agoracommon.GetENVValue("AGORA_JSONRPC_BIND", "")

	flagStorageConfigString string

	flagHTTPCacheAdapter    string = agoracommon.GetENVValue("AGORA_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   int    = agoracommon.DefaultHTTPCachePoolSize
	flagHTTPCacheRedisAddrs string = agoracommon.GetENVValue("AGORA_HTTP_CACHE_REDIS_ADDRS", "")

	flagDraftDays  int64 = 7
	flagDialogDays int64 = 7
	flagVotingDays int64 = 7

	flagMainParticipation         uint = 10
	flagMainApproval              uint = 50
	flagAmendmentParticipation    uint = 10
	flagAmendmentApproval         uint = 66
	flagDebateChangeParticipation uint = 5
	flagDebateChangeApproval      uint = 50
	flagReferendumParticipation   uint = 10
	flagReferendumApproval        uint = 50
)

var (
	nodeCmd *cobra.Command

	storageConfig *storage.Config
	logLevel      logging.Lvl
	log           logging.Logger
)

func init() {
	var err error

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run agora node",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = agoracommon.GetENVValue("AGORA_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagBind, "bind", flagBind, "address to listen on")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", flagNTPServer, "ntp server to correct the clock by")
	nodeCmd.Flags().StringVar(&flagJSONRPCBind, "jsonrpc-bind", flagJSONRPCBind, "address the jsonrpc inspection endpoint listens on, empty disables it")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: {mem, redis}")
	nodeCmd.Flags().IntVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size")
	nodeCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "comma-separated redis addresses")

	nodeCmd.Flags().Int64Var(&flagDraftDays, "draft-days", flagDraftDays, "default discussion phase duration in days")
	nodeCmd.Flags().Int64Var(&flagDialogDays, "dialog-days", flagDialogDays, "default debate phase duration in days")
	nodeCmd.Flags().Int64Var(&flagVotingDays, "voting-days", flagVotingDays, "default voting phase duration in days")
	nodeCmd.Flags().UintVar(&flagMainParticipation, "main-participation", flagMainParticipation, "participation pct for main proposals")
	nodeCmd.Flags().UintVar(&flagMainApproval, "main-approval", flagMainApproval, "approval pct for main proposals")
	nodeCmd.Flags().UintVar(&flagAmendmentParticipation, "amendment-participation", flagAmendmentParticipation, "participation pct for amendments")
	nodeCmd.Flags().UintVar(&flagAmendmentApproval, "amendment-approval", flagAmendmentApproval, "approval pct for amendments")
	nodeCmd.Flags().UintVar(&flagDebateChangeParticipation, "debate-change-participation", flagDebateChangeParticipation, "participation pct for debate-change proposals")
	nodeCmd.Flags().UintVar(&flagDebateChangeApproval, "debate-change-approval", flagDebateChangeApproval, "approval pct for debate-change proposals")
	nodeCmd.Flags().UintVar(&flagReferendumParticipation, "referendum-participation", flagReferendumParticipation, "participation pct for referendums")
	nodeCmd.Flags().UintVar(&flagReferendumApproval, "referendum-approval", flagReferendumApproval, "approval pct for referendums")

	rootCmd.AddCommand(nodeCmd)
}

func parseFlagsNode() {
	var err error

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}

	if len(flagTLSCertFile) > 0 {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			common.PrintFlagsError(nodeCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			common.PrintFlagsError(nodeCmd, "--tls-key", err)
		}
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(nodeCmd, "--log-level", err)
	}

	var logHandler logging.Handler

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = agoracommon.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, agoracommon.JsonFormatEx(false, true)); err != nil {
			common.PrintFlagsError(nodeCmd, "--log-output", err)
		}
	}

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	ledger.SetLogging(logLevel, logHandler)
	proposal.SetLogging(logLevel, logHandler)
	referendum.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)

	log.Info("Starting Agora")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tbind", flagBind)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\tntp-server", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\tjsonrpc-bind", flagJSONRPCBind)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

func newConfig() agoracommon.Config {
	conf := agoracommon.NewConfig()

	conf.DraftDurationDays = flagDraftDays
	conf.DialogDurationDays = flagDialogDays
	conf.VotingDurationDays = flagVotingDays

	conf.MainParticipationPct = flagMainParticipation
	conf.MainApprovalPct = flagMainApproval
	conf.AmendmentParticipationPct = flagAmendmentParticipation
	conf.AmendmentApprovalPct = flagAmendmentApproval
	conf.DebateChangeParticipationPct = flagDebateChangeParticipation
	conf.DebateChangeApprovalPct = flagDebateChangeApproval
	conf.ReferendumParticipationPct = flagReferendumParticipation
	conf.ReferendumApprovalPct = flagReferendumApproval

	conf.HTTPCacheAdapter = flagHTTPCacheAdapter
	conf.HTTPCachePoolSize = flagHTTPCachePoolSize
	if len(flagHTTPCacheRedisAddrs) > 0 {
		addrs := map[string]string{}
		for i, addr := range strings.Split(flagHTTPCacheRedisAddrs, ",") {
			addrs[fmt.Sprintf("shard%d", i)] = strings.TrimSpace(addr)
		}
		conf.HTTPCacheRedisAddrs = addrs
	}

	return conf
}

func newClock() agoracommon.Clock {
	if len(flagNTPServer) < 1 {
		return agoracommon.LocalClock{}
	}

	clock, err := agoracommon.NewNTPClock(flagNTPServer)
	if err != nil {
		common.PrintFlagsError(nodeCmd, "--ntp-server", err)
	}

	return clock
}

func runNode() {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}
	defer st.Close()

	conf := newConfig()
	clock := newClock()
	l := ledger.NewLevelDBLedger(st)

	metrics.InitPrometheusMetrics()

	apiHandler := api.NewNetworkHandlerAPI(
		st,
		proposal.NewEngine(st, l, l, conf),
		referendum.NewEngine(st, l, l, conf),
		clock,
		"",
	)

	router := mux.NewRouter()
	router.Use(network.RecoverMiddleware(flagVerbose))
	apiHandler.AddAPIHandlers(router)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	var handler http.Handler = router

	if len(flagHTTPCacheAdapter) > 0 {
		adapter, err := httpcache.NewAdapter(conf)
		if err != nil {
			common.PrintFlagsError(nodeCmd, "--http-cache-adapter", err)
		}
		client, err := httpcache.NewClient(
			httpcache.WithAdapter(adapter),
			httpcache.WithExpire(defaultCacheTTL),
			httpcache.WithLogger(log),
		)
		if err != nil {
			common.PrintFlagsError(nodeCmd, "--http-cache-adapter", err)
		}
		handler = client.Middleware(handler)
	}

	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	server := &http.Server{
		Addr:    flagBind,
		Handler: handler,
	}
	server.SetKeepAlivesEnabled(true)
	http2.ConfigureServer(server, &http2.Server{})

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			log.Info("listening", "bind", flagBind)
			if len(flagTLSCertFile) > 0 {
				return server.ListenAndServeTLS(flagTLSCertFile, flagTLSKeyFile)
			}
			return server.ListenAndServe()
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		})
	}
	if len(flagJSONRPCBind) > 0 {
		js := network.NewJSONRPCServer(flagJSONRPCBind, st)
		g.Add(func() error {
			return js.Start()
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			js.Stop(ctx)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
