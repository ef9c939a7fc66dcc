// Package git provides the read-only Git queries the repolint utilities need.
//
// All Git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal
//   - Lists exactly the tree a CI checkout would see
//
// The Manager struct provides methods for enumerating the files tracked at
// HEAD and for locating the repository root.
package git
