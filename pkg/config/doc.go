/*
Package config loads renamer settings.

🎯 Purpose:
  - Names the two subfolders a run writes into
  - Lists the suffixes a mapping file path must carry
  - Holds scan ignore patterns and the optional report path

📝 Formats (picked by extension through the Parser registry):
  - .yaml / .yml
  - .json
  - .hcl

Every field is optional. A missing DefaultFile means Default().

🔍 Example (.renamer.yaml):

	renamed_dir: renamed_files
	original_dir: original_files
	mapping_suffixes: [".tsv"]
	ignore:
	  - "*.part"
	report: renamer-report.json
*/
package config
