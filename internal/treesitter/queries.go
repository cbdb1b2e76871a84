package treesitter

// Capture names double as highlight scopes.

const goHighlightQuery = `
((comment) @comment)
((interpreted_string_literal) @string)
((raw_string_literal) @string.raw)
((rune_literal) @string.char)
((escape_sequence) @string.escape)
((int_literal) @number.integer)
((float_literal) @number.float)
((imaginary_literal) @number)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch"
  "type" "var"
] @keyword
((nil) @constant.language)
((true) @constant.language)
((false) @constant.language)
((iota) @constant.language)
((identifier) @type.builtin (#match? @type.builtin "^(bool|byte|rune|string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|uintptr|float32|float64|complex64|complex128|error|any|comparable)$"))
((identifier) @builtin (#match? @builtin "^(append|cap|clear|close|complex|copy|delete|imag|len|make|max|min|new|panic|print|println|real|recover)$"))
((const_spec name: (identifier) @constant))
((type_spec name: (type_identifier) @type))
((type_identifier) @type)
((package_identifier) @type)
((type_parameter_declaration (identifier) @type))
((function_declaration name: (identifier) @function))
((method_declaration name: (field_identifier) @function.method))
((method_elem (field_identifier) @function))
((call_expression function: (identifier) @function.call))
((call_expression function: (selector_expression field: (field_identifier) @function.call)))
((selector_expression field: (field_identifier) @field))
((field_identifier) @field)
((parameter_declaration (identifier) @parameter))
((variadic_parameter_declaration (identifier) @parameter))
((label_name) @keyword.label)
((blank_identifier) @variable)
((identifier) @variable)
[
  "+" "-" "*" "/" "%" "==" "!=" "<=" ">=" "<" ">" "=" ":=" "&&" "||"
  "!" "&" "|" "^" "<<" ">>" "&^" "+=" "-=" "*=" "/=" "%=" "&=" "|="
  "^=" "<<=" ">>=" "&^=" "<-" "++" "--" "..."
] @operator
[
  "." "," ";" ":" "(" ")" "[" "]" "{" "}"
] @punctuation
`

const yamlHighlightQuery = `
((comment) @comment)
((string_scalar) @string)
((double_quote_scalar) @string)
((single_quote_scalar) @string)
((integer_scalar) @number)
((float_scalar) @number)
((null_scalar) @constant.language)
((boolean_scalar) @constant.language)
((block_mapping_pair key: (_) @field))
((flow_pair key: (_) @field))
((anchor_name) @keyword.anchor)
((alias_name) @keyword.anchor)
((tag) @type)
["," ":" "-" "[" "]" "{" "}" ">" "|" "*" "&"] @punctuation
`

const tomlHighlightQuery = `
((comment) @comment)
((string) @string)
((integer) @number)
((float) @number)
((boolean) @constant.language)
((local_date) @string.special)
((local_time) @string.special)
((local_date_time) @string.special)
((offset_date_time) @string.special)
((bare_key) @field)
((quoted_key) @field)
((table (bare_key) @type.table))
((table (quoted_key) @type.table))
((table (dotted_key) @type.table))
((table_array_element (bare_key) @type.table))
((table_array_element (quoted_key) @type.table))
((table_array_element (dotted_key) @type.table))
["=" "." "," "[" "]" "[[" "]]" "{" "}"] @punctuation
`

const bashHighlightQuery = `
((comment) @comment)
((string) @string)
((raw_string) @string)
((heredoc_body) @string.heredoc)
((number) @number)
((variable_name) @variable)
((special_variable_name) @variable.special)
((command_name) @function.call)
((function_definition name: (word) @function))
[
  "if" "then" "else" "elif" "fi" "case" "esac" "for" "while" "until"
  "do" "done" "in" "function" "select" "return" "exit" "break" "continue"
  "local" "export" "readonly" "declare" "typeset" "unset"
] @keyword
["$" "${" "}" "(" ")" "((" "))" "[" "]" "[[" "]]" "{" "}" ";" ";;" "&&" "||" "|" "&" "<" ">" ">>" "<<" "<<<"] @operator
`

const markdownBlockHighlightQuery = `
(atx_heading) @keyword.heading
(setext_heading) @keyword.heading
(thematic_break) @comment
(block_quote_marker) @comment
(list_marker_plus) @keyword
(list_marker_minus) @keyword
(list_marker_star) @keyword
(list_marker_dot) @keyword
(list_marker_parenthesis) @keyword
(task_list_marker_checked) @constant
(task_list_marker_unchecked) @constant
(fenced_code_block_delimiter) @punctuation.fence
(indented_code_block) @string.code
(info_string) @comment
(language) @type
(link_reference_definition) @function
(pipe_table_delimiter_row) @comment
(pipe_table_delimiter_cell) @comment
`

const markdownInlineHighlightQuery = `
(code_span) @string.code
(emphasis) @type.emphasis
(strong_emphasis) @type.strong
(strikethrough) @comment
(inline_link) @function
(full_reference_link) @function
(collapsed_reference_link) @function
(shortcut_link) @function
(image) @function
(link_text) @function
(link_destination) @string.url
(link_title) @string
(uri_autolink) @function
(email_autolink) @function
(html_tag) @type
`
