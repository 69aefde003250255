// Package config defines the application's configuration structures and the
// environment-driven loading logic that populates them.
package config
