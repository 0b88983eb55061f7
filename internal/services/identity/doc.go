// Package identity manages creation, encryption and loading of the local identity.
//
// It enforces passphrase policy, generates the ElGamal and DSA private
// exponents, and persists them via the domain.IdentityStore. LoadSystem
// rebuilds a hybrid.System from the stored exponents.
package identity
