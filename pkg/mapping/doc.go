/*
Package mapping parses rename mapping files.

A mapping file holds one row per line, two tab-separated columns:

	<existing base name>\t<new base name>

There is no header and no escaping. Trailing whitespace on a row is ignored.

🎯 Rules:
  - a row without exactly two columns is a FormatError and stops parsing
  - a name repeated within its column is collected into a DuplicateError
  - a Table is only returned when no column has duplicates

🔍 Example:

	table, err := mapping.ParseFile(ctx, afero.NewOsFs(), "names.tsv")
	if err != nil {
		var rep mapping.Reportable
		if errors.As(err, &rep) {
			fmt.Println(rep.Diagnostic())
		}
		return err
	}
*/
package mapping
