package commands

import "os"

// EnvWebAddress overrides the address "trend serve" listens on.
const EnvWebAddress = "TREND_WEB_PORT"

func DefaultServeAddress() string {
	addr := os.Getenv(EnvWebAddress)
	if addr != "" {
		return addr
	}
	return ":8080"
}

// serveAddress resolves the --addr flag. It runs after the env file is
// loaded, so TREND_WEB_PORT may come from there.
func serveAddress(flag string) string {
	if flag != "" {
		return flag
	}
	return DefaultServeAddress()
}
