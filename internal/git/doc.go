// Package git provides the few Git CLI calls wg needs: repository
// initialization, install checks and version reporting.
package git
