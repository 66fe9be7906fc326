/*
Package ioutest provides mocked implementations of the core interfaces,
useful when testing extensions.

Structures implemented here are mocks. They are intended to be used in
tests only. Unless a test requires a specific behaviour, prefer these
over hand-rolled fakes to keep tests short and consistent.
*/
package ioutest
