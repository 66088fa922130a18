// Package repository handles all interactions with the database.
//
// It contains the SQL the service layer needs, so services never see
// pgx directly.
package repository
