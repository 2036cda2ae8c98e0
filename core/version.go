package core

// buildRevision is a compile-time revision string, overridable at build
// time with:
//
//	go build -ldflags "-X github.com/sotalya/tducore/core.buildRevision=$(git rev-parse HEAD)"
//
// Grounded on original_source/src/tucucore/version.cpp's
// Version::getGitRevision, which surfaces a macro baked in at compile
// time; the idiomatic Go equivalent is a package-level var overridden via
// -ldflags rather than a preprocessor define.
var buildRevision = "dev"

// Revision returns the compile-time revision string, or "dev" if the
// binary was not built with -ldflags -X.
func Revision() string {
	return buildRevision
}
