/*
Package x contains some standard extensions and the interfaces they share.

Extensions implement common functionality (bank, vault) and are
designed to be combined into an application. Each subpackage should be
imported alone, this package only holds interfaces that let the extensions
cooperate without depending on each other.
*/
package x
