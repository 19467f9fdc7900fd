// Package classify assigns a display category to an email based on its
// subject line.
//
// Classification is a pure function over a fixed, ordered rule table:
// the subject is lowercased and each rule's keywords are tested for
// substring containment, in table order. The first rule with a hit wins;
// subjects matching no rule (including empty subjects) fall back to the
// Misc / General category.
//
// Matching is deliberately substring-based rather than word-boundary
// based. This trades false positives for recall and must not be changed
// without reclassifying what existing users see.
package classify
