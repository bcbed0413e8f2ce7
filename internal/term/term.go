// Package term implements the shared-subterm DAG that the evaluator
// reduces: application, abstraction, variable and IO-atom nodes,
// reference-counted and reclaimed promptly since the graph never
// contains cycles.
package term

// Kind tags the shape of a Node. A Node's Kind and children are
// rewritten in place by the evaluator (see internal/eval), so parents
// holding a *Node see every reduction without re-walking the graph.
type Kind int

const (
	KApp Kind = iota
	KLam
	KVar
	KIo
)

func (k Kind) String() string {
	switch k {
	case KApp:
		return "App"
	case KLam:
		return "Lam"
	case KVar:
		return "Var"
	case KIo:
		return "Io"
	default:
		return "?"
	}
}

// IoKind discriminates the IO atoms. Treated as an opaque constant by
// reduction; only the IO loop inspects it.
type IoKind int

const (
	IoExit IoKind = iota
	IoErr
	IoGet
	IoPut
	IoEPut
	IoDump
)

var ioNames = map[IoKind]string{
	IoExit: "$exit",
	IoErr:  "$err",
	IoGet:  "$get",
	IoPut:  "$put",
	IoEPut: "$eput",
	IoDump: "$dump",
}

func (k IoKind) String() string {
	if n, ok := ioNames[k]; ok {
		return n
	}
	return "$?"
}

// Node is a single mutable cell shared by every Kind. Using one struct
// rather than an interface-per-shape lets whnf and beta overwrite a
// node's content in place while every parent pointer keeps observing
// the same address.
type Node struct {
	Kind Kind

	// App: Lhs = function, Rhs = argument.
	// Lam: Lhs = bound Var node, Rhs = body.
	Lhs *Node
	Rhs *Node

	// Io: which atom.
	Io IoKind

	// Var: human-readable name, kept only for $dump rendering; two Var
	// nodes are distinguished by pointer identity, never by Name.
	Name string

	refcount  int
	bindcount int // defined for KVar; number of Lam nodes binding it

	epoch     uint64
	betaCache *Node // weak: valid only while epoch == the live epoch
}

// NewApp allocates App(f, x), taking ownership of both references.
func NewApp(f, x *Node) *Node {
	return &Node{Kind: KApp, Lhs: f, Rhs: x, refcount: 1}
}

// NewLam allocates Lam(v, body), taking ownership of the body
// reference as-is and adding a brand new binding edge to v on top of
// whatever reference(s) the caller already holds to v (incrementing
// both v's refcount and its bindcount for that edge alone).
func NewLam(v, body *Node) *Node {
	v.refcount++
	v.bindcount++
	return &Node{Kind: KLam, Lhs: v, Rhs: body, refcount: 1}
}

// NewVar allocates a fresh variable leaf with identity. Name is cosmetic.
func NewVar(name string) *Node {
	return &Node{Kind: KVar, Name: name, refcount: 1}
}

// NewIo allocates an IO atom leaf.
func NewIo(k IoKind) *Node {
	return &Node{Kind: KIo, Io: k, refcount: 1}
}

// Refcount reports the node's current live in-edge count. Exposed for
// the WHNF fast path and for tests asserting balance.
func (n *Node) Refcount() int { return n.refcount }

// Bindcount reports how many Lam nodes bind this Var.
func (n *Node) Bindcount() int { return n.bindcount }

// Incref records one more owner of n and returns n, mirroring the
// contract's "borrow in, owned reference out" idiom so call sites read
// as: x = Incref(shared).
func Incref(n *Node) *Node {
	n.refcount++
	return n
}

// Decref releases one owned reference to n. When the count reaches
// zero the node is freed and its children (and, for Lam, its bound
// variable's bindcount) are decremented in turn — recursively, since
// the DAG has no cycles and a chain of single-owner nodes is bounded
// by the graph's size.
func Decref(n *Node) {
	if n == nil {
		return
	}
	n.refcount--
	if n.refcount > 0 {
		return
	}
	switch n.Kind {
	case KApp:
		Decref(n.Lhs)
		Decref(n.Rhs)
	case KLam:
		v := n.Lhs
		v.bindcount--
		Decref(v)
		Decref(n.Rhs)
	case KVar, KIo:
		// leaves: nothing owned beneath them
	}
	n.Lhs, n.Rhs, n.betaCache = nil, nil, nil
}

// CacheGet returns the memoized substitution result for epoch, or nil
// if the cache is stale (stamped for a different epoch). Used by
// internal/eval to implement the memoized beta pass.
func (n *Node) CacheGet(epoch uint64) *Node {
	if n.epoch == epoch {
		return n.betaCache
	}
	return nil
}

// CacheSet stamps n's beta cache for the current epoch. The pointer is
// a weak borrow: storing it never changes result's refcount, and it is
// only ever read back through CacheGet, which checks the epoch first.
func (n *Node) CacheSet(epoch uint64, result *Node) {
	n.epoch = epoch
	n.betaCache = result
}

// Overwrite rewrites n's content in place to match src: n keeps its
// address (so every existing parent pointer observes the change) but
// becomes a copy of src's shape. It increfs src's children (n now owns
// edges to them) and, if src is a Lam, registers the rebinding. The
// caller remains responsible for releasing its own reference to src
// (typically via Decref) once Overwrite returns.
func (n *Node) Overwrite(src *Node) {
	if src.Lhs != nil {
		Incref(src.Lhs)
	}
	if src.Rhs != nil {
		Incref(src.Rhs)
	}
	if src.Kind == KLam {
		src.Lhs.bindcount++
	}
	n.Kind = src.Kind
	n.Lhs = src.Lhs
	n.Rhs = src.Rhs
	n.Io = src.Io
	n.Name = src.Name
}
