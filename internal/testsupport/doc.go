// Package testsupport provides git repository fixtures and collaborator stubs shared by package tests.
package testsupport
