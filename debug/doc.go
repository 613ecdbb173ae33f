// Package debug renders an nfa.Nfa or dfa.Dfa as Graphviz `dot` source,
// for visual inspection while developing a rule file. It never
// participates in the compile pipeline itself (lexergen.Generate never
// imports it); nothing here affects what Generate builds.
package debug
