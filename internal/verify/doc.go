// Package verify checks the closed-form mechanics against identities they
// must satisfy: Mohr invariants, eigen consistency, boundary conditions and
// volume preservation. Each [Check] keeps the worst deviation it observed.
package verify
