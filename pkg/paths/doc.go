// Package paths resolves the directories liscaf reads from and writes to.
//
// Configuration and the template catalog live under the XDG config
// directory, the log file under the XDG state directory. Each can be
// redirected with an environment variable, which is how tests isolate
// themselves from the user's real setup.
package paths
