// Package plan handles parsing of workspace plan files. A plan lists the
// members and settings for `wg new --from`, so a workspace layout can be
// kept in version control and recreated.
package plan
