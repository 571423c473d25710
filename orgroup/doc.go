// Package orgroup implements resistance.OrGroups: a registry of or-group
// constraints, each a set of member variables of which at least two must
// agree on a value for the group to be "satisfied". A group's priority is
// the resistance it contributes to a member that would otherwise have to
// move away from the agreed value.
package orgroup
