// Package overrides loads per-field overrides from JSON or YAML files.
//
//	forms:
//	  signup:
//	    submitLabel: Create account
//	    fields:
//	      email:
//	        label: Work email
//	        placeholder: you@company.com
//	        messages:
//	          pattern: Use your work address
package overrides
