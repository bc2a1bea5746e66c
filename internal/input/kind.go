package input

// Kind identifies one of the three request kinds a host may send.
type Kind int

const (
	// KindPrice asks for a positive decimal price.
	KindPrice Kind = iota + 1
	// KindQuantity asks for a positive integer no greater than a bound.
	KindQuantity
	// KindSearch asks for a free-text search term.
	KindSearch
)

// Kinds lists every request kind in wire order.
var Kinds = []Kind{KindPrice, KindQuantity, KindSearch}

// String returns the wire name of the kind ("price", "quantity", "search").
func (k Kind) String() string {
	switch k {
	case KindPrice:
		return "price"
	case KindQuantity:
		return "quantity"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= KindPrice && k <= KindSearch
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}
