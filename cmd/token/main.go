package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-cafe/jobly/internal/config"
	"github.com/golang-cafe/jobly/internal/middleware"
)

func main() {
	username := flag.String("username", "admin", "username stored in the token")
	admin := flag.Bool("admin", true, "grant the admin flag")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	flag.Parse()

	key, err := config.LoadJWTSigningKey()
	if err != nil {
		log.Fatalf("unable to load config %v", err)
	}
	tk, err := middleware.CreateToken(key, *username, *admin, *ttl)
	if err != nil {
		log.Fatalf("unable to sign token: %v", err)
	}
	fmt.Println(tk)
}
