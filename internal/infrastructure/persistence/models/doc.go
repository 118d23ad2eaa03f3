// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; repositories convert between the two.
package models
