// Package cargo wraps the cargo CLI commands used by wg: creating member
// packages and reporting the installed version.
package cargo
