package main

import (
	"github.com/hyeonlab/member_service/config"
	"github.com/hyeonlab/member_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
