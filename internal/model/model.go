// Package model holds the persisted records the forms create.
package model
