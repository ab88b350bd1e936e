// Package domain contains the catalog's core entities (accounts,
// credentials, books and their ratings) along with the validation rules
// shared by the HTTP layer, the services and the CSV importer. It has no
// knowledge of storage or transport.
package domain
