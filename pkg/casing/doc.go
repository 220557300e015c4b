// Package casing derives the case-style variants of a project name.
//
// A name such as "acme-app" is decomposed into lowercase words
// (["acme", "app"]) and every recognized naming convention is rendered
// from those words: acme-app, acme_app, ACME_APP, AcmeApp, acmeApp,
// Acme App, acme app, Acme_App, acmeapp, ACMEAPP and the raw name itself.
//
// The style table is an immutable value. Build it once with DefaultTable
// and pass it to whatever needs it; there is no package level state.
package casing
