package service

import (
	"crypto/tls"
	"time"

	"teammate-backend/internal/config"

	"github.com/go-ldap/ldap/v3"
)

// DirectoryUser represents a subset of directory attributes returned by a search
type DirectoryUser struct {
	DN          string `json:"dn"`
	DisplayName string `json:"displayName"`
	Mail        string `json:"mail"`
	GivenName   string `json:"givenName"`
	SN          string `json:"sn"`
	Title       string `json:"title"`
}

// DirectoryService looks developers up in a corporate LDAP directory,
// used for inviting colleagues who have no account yet
type DirectoryService struct {
	cfg *config.Config
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(cfg *config.Config) *DirectoryService {
	return &DirectoryService{cfg: cfg}
}

// SearchByName searches directory users by common name (cn prefix match)
func (s *DirectoryService) SearchByName(name string) ([]DirectoryUser, error) {
	addr := s.cfg.LDAPHost + ":" + s.cfg.LDAPPort

	// Establish TLS connection to the directory server
	l, err := ldap.DialTLS("tcp", addr, &tls.Config{InsecureSkipVerify: s.cfg.LDAPInsecureSkipVerify})
	if err != nil {
		return nil, err
	}
	defer l.Close()

	// Set timeout
	if s.cfg.LDAPTimeoutSec > 0 {
		l.SetTimeout(time.Duration(s.cfg.LDAPTimeoutSec) * time.Second)
	}

	// Bind with configured credentials
	if err := l.Bind(s.cfg.LDAPBindDN, s.cfg.LDAPBindPW); err != nil {
		return nil, err
	}

	// Build search request
	filter := "(cn=" + ldap.EscapeFilter(name) + "*)"
	attrs := []string{"displayName", "mail", "givenName", "sn", "title"}

	req := ldap.NewSearchRequest(
		s.cfg.LDAPBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		s.cfg.LDAPTimeoutSec,
		false,
		filter,
		attrs,
		nil,
	)

	// Execute search
	res, err := l.Search(req)
	if err != nil {
		return nil, err
	}

	// Map results
	out := make([]DirectoryUser, 0, len(res.Entries))
	for _, e := range res.Entries {
		get := func(a string) string { return e.GetAttributeValue(a) }
		out = append(out, DirectoryUser{
			DN:          e.DN,
			DisplayName: get("displayName"),
			Mail:        get("mail"),
			GivenName:   get("givenName"),
			SN:          get("sn"),
			Title:       get("title"),
		})
	}

	return out, nil
}
