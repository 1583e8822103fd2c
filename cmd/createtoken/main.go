package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/carlsburger/gastrocore/config"
	"github.com/carlsburger/gastrocore/security"
)

func main() {
	id := flag.Int("id", 1, "staff member id")
	name := flag.String("name", "dev", "staff member name")
	role := flag.String("role", security.RoleService, "staff role")
	venue := flag.String("venue", "carlsburg", "venue code")
	ttl := flag.Int64("ttl", 24*3600, "token lifetime in seconds")
	flag.Parse()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.SigningSecret == "" {
		log.Fatal("GASTROCORE_SIGNING_SECRET is not set")
	}

	token, err := security.CreateStaffToken(&security.StaffMember{
		Id:    *id,
		Name:  *name,
		Role:  *role,
		Venue: *venue,
	}, cfg.SigningSecret, *ttl)
	if err != nil {
		log.Fatalf("creating token: %v", err)
	}
	fmt.Println(token)
}
