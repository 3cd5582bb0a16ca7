// Package descriptor derives field descriptors from `meta` struct tags.
//
// A descriptor table is built once per (tag name, struct type) and cached for
// the life of the process; the engines never re-read tags.
//
// # Tag syntax
//
//	Name     string    `meta:"person.name,mandatory"`
//	Age      *int      `meta:"person.age,default=42"`
//	Nick     string    `meta:"person.nick,blankDefault"`
//	Country  string    `meta:"country,defaultMeta=FR"`
//	Born     time.Time `meta:"person.born,format=2006-01-02"`
//	Active   bool      `meta:"active,true=OUI|O,false=NON|N"`
//	Address  *Address  `meta:",nested"`
//	Contact  Contact   `meta:",nestedMandatory,impl=contact"`
//	FullName string    `meta:",handler=fullname"`
//
// The first item is the metadata key and may be empty. Values containing
// commas are written in single quotes: format='Jan 2, 2006'.
//
// Options:
//   - mandatory: missing data is an error
//   - default=v: literal used when the key is absent (unmapping) or the value
//     is nil (mapping)
//   - blankDefault: use "" as the default
//   - defaultMeta=v / blankDefaultMeta: inject the key into the working
//     metadata before lookup, when absent
//   - nested / nestedMandatory: map the field recursively
//   - impl=name: implementation type of a nested field, from the type catalogue
//   - handler=name: custom handler, from the handler catalogue
//   - format=layout: temporal layout
//   - true=a|b, false=c|d: boolean literals
//
// Embedded structs without a tag stand for inherited fields. Table.All walks
// them recursively after the declared fields; Table.Declared does not.
package descriptor
