package internal

import (
	"log"
	"net/http"
	"os"

	"github.com/josephsnyder/gerrit-oauth-provider/api"
	"github.com/josephsnyder/gerrit-oauth-provider/configs"
	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider"
	"github.com/josephsnyder/gerrit-oauth-provider/internal/provider/google"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/encryptor"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/random"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/redis"
	"github.com/josephsnyder/gerrit-oauth-provider/pkg/serializer"
)

// StartServer wires the configured identity provider into the HTTP
// authentication endpoints and serves until the listener fails.
func StartServer() {
	// -------------
	// Configs
	// -------------
	config, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// --------------
	// Logger
	// --------------
	logger := log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	// --------------
	// State store
	// --------------
	cacheStore, err := redis.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	// --------------
	// Session crypto
	// --------------
	aes, err := encryptor.NewAesEncryptor(config.SessionKey)
	if err != nil {
		log.Fatalf("session key: %v", err)
	}
	// --------------
	// Identity provider
	// --------------
	var googleOpts []google.Option
	if config.Debug {
		googleOpts = append(googleOpts, google.WithLogger(log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)))
	}
	googleProvider, err := google.New(google.Config{
		ClientID:                     config.Google.ClientID,
		ClientSecret:                 config.Google.ClientSecret,
		CanonicalWebURL:              config.CanonicalWebURL,
		LinkToExistingOpenIDAccounts: config.LinkToExistingOpenIDAccounts,
	}, googleOpts...)
	if err != nil {
		log.Fatalf("configure google provider: %v", err)
	}
	registry := provider.NewRegistry()
	registry.Register("google", googleProvider)
	if _, err := registry.Get(config.Provider); err != nil {
		log.Fatalf("configure provider: %v", err)
	}
	// --------------
	// API setup
	// --------------
	auth := NewAuthService(registry, cacheStore, random.NewRandom(),
		serializer.NewJSONSerialization(), aes, logger)
	api.SetupRoutes(auth)
	//---------------
	// Http Server
	// --------------
	logger.Printf("listening on %s", config.ListenAddr)
	log.Fatal(http.ListenAndServe(config.ListenAddr, nil))
}
