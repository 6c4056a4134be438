// Package installers finds and runs secondary installers: the install.sh
// scripts scattered through the dotfiles tree plus the builtin tasks
// compiled into the binary.
//
// Secondary installers never decide the outcome of a run. Each one is
// expected to check its own preconditions, to be safe to rerun, and to
// exit cleanly when it does not apply. RunAll records a result for every
// task and always proceeds to the next one.
package installers
