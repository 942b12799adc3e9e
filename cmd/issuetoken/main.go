// Command issuetoken signs an access token for a member, for local testing and for the
// login flow that lives outside this service.
package main

import (
	"flag"
	"fmt"
	"log"

	"youthorg-backend-trusted/internal/config"
	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/security"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	id := flag.String("id", "", "Member id the token is issued to")
	role := flag.String("role", "", "Role: ROOT_ADMIN, FAMILY_HEAD, INTER_UNIT_HEAD, UNIT_LEADER, MEMBER, PARENT_VIEWER")
	unit := flag.String("unit", "", "Bound unit, required for UNIT_LEADER")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// refuse to sign what the server would reject
	if _, err := domain.NewPrincipal(*id, domain.Role(*role), domain.OrgUnit(*unit)); err != nil {
		log.Fatalf("Invalid principal: %v", err)
	}
	if domain.Role(*role).Class() == domain.RoleClassNoAccess {
		log.Fatalf("Role %q grants no access", *role)
	}

	tm := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTokenTTL())
	token, err := tm.GenerateAccessToken(*id, domain.Role(*role), domain.OrgUnit(*unit))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
