package style

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// Role is a semantic element role a theme can style.
type Role string

// Semantic roles.
const (
	RoleH1         Role = "h1"
	RoleH2         Role = "h2"
	RoleH3         Role = "h3"
	RoleH4         Role = "h4"
	RoleH5         Role = "h5"
	RoleH6         Role = "h6"
	RoleP          Role = "p"
	RoleStrong     Role = "strong"
	RoleEm         Role = "em"
	RoleCode       Role = "code"
	RoleA          Role = "a"
	RoleBlockquote Role = "blockquote"
	RoleLi         Role = "li"
	RoleUl         Role = "ul"
	RoleOl         Role = "ol"
	RoleTable      Role = "table"
	RoleTh         Role = "th"
	RoleTd         Role = "td"
	RoleTr         Role = "tr"
	RolePre        Role = "pre"
	RoleImg        Role = "img"
	RoleContainer  Role = "container"
)

// Roles lists every known role in a stable order.
var Roles = []Role{
	RoleH1, RoleH2, RoleH3, RoleH4, RoleH5, RoleH6,
	RoleP, RoleStrong, RoleEm, RoleCode, RoleA,
	RoleBlockquote, RoleLi, RoleUl, RoleOl,
	RoleTable, RoleTh, RoleTd, RoleTr, RolePre, RoleImg, RoleContainer,
}

var knownRoles = func() map[Role]struct{} {
	m := make(map[Role]struct{}, len(Roles))
	for _, r := range Roles {
		m[r] = struct{}{}
	}
	return m
}()

// ErrUnknownRole indicates a theme declared a role outside the closed set.
var ErrUnknownRole = errors.New("unknown style role")

// ErrInvalidDeclaration indicates a role's declaration string held no
// parseable declaration.
var ErrInvalidDeclaration = errors.New("invalid style declaration")

// HeadingRole returns the role for a heading level, clamped to 1..6.
func HeadingRole(level int) Role {
	switch {
	case level <= 1:
		return RoleH1
	case level >= 6:
		return RoleH6
	}
	return Role(fmt.Sprintf("h%d", level))
}

// Map holds the parsed declarations of one theme keyed by role.
// A Map is never mutated after construction.
type Map map[Role]Properties

// ParseMap validates raw role declarations and parses them.
// All problems are reported together.
func ParseMap(raw map[string]string) (Map, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := make(Map, len(raw))
	var errs error
	for _, k := range keys {
		role := Role(k)
		if _, ok := knownRoles[role]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrUnknownRole, k))
			continue
		}
		props := Parse(raw[k])
		if len(props) == 0 && raw[k] != "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %q", ErrInvalidDeclaration, k, raw[k]))
			continue
		}
		m[role] = props
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// Get returns the declarations for role (nil when the theme omits it).
func (m Map) Get(role Role) Properties {
	return m[role]
}
