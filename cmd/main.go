package main

import (
	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/cmd/server"
	"github.com/mkalio/shopcore-backend/internal/auth"
	"github.com/mkalio/shopcore-backend/internal/config"
	"github.com/mkalio/shopcore-backend/internal/logging"
)

var (
	srvAddr                 = config.Env.ServerAddr
	logLevel                = config.Env.LogLevel
	accessTokenSecret       = config.Env.AccessTokenSecret
	accessTokenExpiryInSecs = config.Env.AccessTokenExpiryInSecs
)

func main() {
	logging.New("shopcore", logLevel)

	// prices and totals render as json numbers, matching the api contract
	decimal.MarshalJSONWithoutQuotes = true

	srv := server.NewServer(&server.ServerConfig{
		Addr: srvAddr,
		TokenManager: auth.NewTokenService(
			accessTokenSecret,
			accessTokenExpiryInSecs,
		),
	},
	)
	srv.Run()
}
