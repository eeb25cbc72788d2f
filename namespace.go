package polyglot

// Namespace identifies a feature group of translations. Namespaces are
// independent: loading one never implicitly loads another.
type Namespace string

const (
	NamespaceCommon    Namespace = "common"
	NamespaceDashboard Namespace = "dashboard"
	NamespaceBilling   Namespace = "billing"
	NamespaceWorkflow  Namespace = "workflow"
	NamespaceEditor    Namespace = "editor"
	NamespaceHelp      Namespace = "help"
)

// Namespaces returns all known namespaces.
func Namespaces() []Namespace {
	return []Namespace{
		NamespaceCommon,
		NamespaceDashboard,
		NamespaceBilling,
		NamespaceWorkflow,
		NamespaceEditor,
		NamespaceHelp,
	}
}

// ValidNamespace reports whether ns is a known namespace.
func ValidNamespace(ns string) bool {
	switch Namespace(ns) {
	case NamespaceCommon, NamespaceDashboard, NamespaceBilling,
		NamespaceWorkflow, NamespaceEditor, NamespaceHelp:
		return true
	}
	return false
}
