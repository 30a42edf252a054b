// Package abi assigns every type expression a canonical structural name and
// collects the compound shapes (slices, owned pointers, owned slices,
// closures) that a set of items exposes.
//
// Mangled names are built from '_'-separated words:
//
//	bool i8 i16 i32 i64 isize u8 u16 u32 u64 usize
//	*const T / *mut T          const_T_ptr / mut_T_ptr
//	*const string              const_str / mut_str
//	*const [T] / *mut [T]      slice_const_T / slice_mut_T
//	owned T                    owned_T
//	fn(a: A, b: B) -> R        fn_R_args2_A_B  (R = void when absent)
//	closure(...) -> R          closure_R_argsN_...
//	[T; N]                     array_T_N
//	Name                       Name, or <len>Name when Name contains '_'
//	                           or collides with a word above
//
// The encoding is injective: Demangle inverts Mangle.
package abi
