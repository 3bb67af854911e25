package main

import (
	"flag"

	"github.com/credgate/credgate/internal/client/cli"
	"github.com/credgate/credgate/internal/common"
)

func main() {

	address := flag.String("a", "http://localhost:8080", "server address")
	tokenHeader := flag.String("k", common.DefaultAccessTokenHeader, "access token header name")
	flag.Parse()

	cli.Main(*address, *tokenHeader)

}
