package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ElberJesus09/rectorado/pkg/adjuntos"
	"github.com/ElberJesus09/rectorado/pkg/api"
	"github.com/ElberJesus09/rectorado/pkg/calendario"
	"github.com/ElberJesus09/rectorado/pkg/config"
	"github.com/ElberJesus09/rectorado/pkg/session"
	"github.com/ElberJesus09/rectorado/pkg/sheets"
	"github.com/ElberJesus09/rectorado/pkg/tramites"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "rectorado.toml", "Path to the config file")
	tokenFile := flag.String("token", "token.json", "Path to the stored OAuth token")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SpreadsheetID == "" {
		log.Fatalf("spreadsheet_id is not set in %s", *configFile)
	}

	sess, err := loadSession(cfg.CredentialsFile, *tokenFile)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	store, err := sheets.NewClient(sess.TokenSource(), cfg.SpreadsheetID)
	if err != nil {
		log.Fatalf("Failed to create sheets client: %v", err)
	}
	documents := tramites.NewService(store, sess, cfg.SheetName)
	calendar := calendario.NewService(store, sess, cfg.CalendarSheetName)
	uploader, err := adjuntos.NewUploader(sess.TokenSource(), sess, cfg.FolderID)
	if err != nil {
		log.Fatalf("Failed to create drive client: %v", err)
	}

	router := api.GetRouter(api.NewHandler(documents, calendar, uploader))
	go startServer(cfg.Listen, router)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	<-signalChan
	log.Info("Signalled, shutting down")
}

// loadSession builds an authenticated session from the OAuth client
// credentials plus a previously stored token.
func loadSession(credentialsFile, tokenFile string) (*session.Session, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, err
	}
	conf, err := google.ConfigFromJSON(creds,
		sheetsapi.SpreadsheetsScope,
		driveapi.DriveFileScope,
	)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(b, token); err != nil {
		return nil, err
	}

	return session.Acquire(conf, token), nil
}

func startServer(addr string, router http.Handler) {
	server := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
